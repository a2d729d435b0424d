package models

// Gender and preference values stored on profiles
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Interaction set attributes on a profile document. An id occupies at most
// one of the three sets at any instant.
const (
	FieldLikes    = "likes"
	FieldDislikes = "dislikes"
	FieldMatches  = "matches"
)

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID      string   `dynamodbav:"userId" json:"userId"` // Partition Key, owned by the identity provider
	Name        string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age         int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Bio         string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Gender      string   `dynamodbav:"gender" json:"gender"`         // male or female
	Preference  string   `dynamodbav:"preference" json:"preference"` // gender of candidates this user wants to see
	MainImage   string   `dynamodbav:"mainImage,omitempty" json:"mainImage,omitempty"`
	ExtraImages []string `dynamodbav:"extraImages,omitempty" json:"extraImages,omitempty"`
	Captions    []string `dynamodbav:"captions,omitempty" json:"captions,omitempty"`
	Likes       []string `dynamodbav:"likes,omitempty,stringset" json:"likes,omitempty"`
	Dislikes    []string `dynamodbav:"dislikes,omitempty,stringset" json:"dislikes,omitempty"`
	Matches     []string `dynamodbav:"matches,omitempty,stringset" json:"matches,omitempty"`
}

// HasLiked reports whether the profile's likes set contains the given user id.
func (p *UserProfile) HasLiked(userID string) bool {
	return containsID(p.Likes, userID)
}

// HasMatched reports whether the profile's matches set contains the given user id.
func (p *UserProfile) HasMatched(userID string) bool {
	return containsID(p.Matches, userID)
}

func containsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
