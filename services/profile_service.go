package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"icebreaker_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ProfileService owns the user profile documents and the match records
// derived from them. It is the single writer for the likes, dislikes and
// matches sets, which are stored as DynamoDB string sets and mutated only
// through atomic ADD/DELETE expressions so concurrent writers cannot lose
// updates.
type ProfileService struct {
	Dynamo *DynamoService
}

func profileKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

// AddUserProfile adds a new user profile
func (ps *ProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if err := ps.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ps *ProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ps.Dynamo.GetItem(ctx, models.UserProfilesTable, profileKey(userID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpdateUserProfile applies a partial update to an existing user profile.
// The interaction sets are not reachable through this path; they only move
// via RecordLike, RecordDislike and CreateMatch.
func (ps *ProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	for field := range updates {
		if field == models.FieldLikes || field == models.FieldDislikes || field == models.FieldMatches {
			return nil, fmt.Errorf("%w: field %q is not directly writable", ErrValidation, field)
		}
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)
	for field, value := range updates {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", field, err)
		}
		updateExpression += " #" + field + " = :" + field + ","
		expressionAttributeValues[":"+field] = av
		expressionAttributeNames["#"+field] = field
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ps.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression,
		"attribute_exists(userId)", profileKey(userID), expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		if isConditionFailure(err) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
		}
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}
	return &updatedProfile, nil
}

// DeleteUserProfile removes a user profile
func (ps *ProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	return ps.Dynamo.DeleteItem(ctx, models.UserProfilesTable, profileKey(userID))
}

// QueryByPreference returns all profiles with the given gender and stated
// preference. Order is whatever the scan produces.
func (ps *ProfileService) QueryByPreference(ctx context.Context, gender, preference string) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := ps.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, nil, map[string]string{
		"gender":     gender,
		"preference": preference,
	}, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	return profiles, nil
}

// RecordLike adds targetID to the user's likes set. The same id is deleted
// from the dislikes set in the same expression, so a re-surfaced disliked
// candidate moves between sets instead of occupying both.
func (ps *ProfileService) RecordLike(ctx context.Context, userID, targetID string) error {
	return ps.moveInteraction(ctx, userID, targetID,
		"ADD #likes :id DELETE #dislikes :id",
		map[string]string{"#likes": models.FieldLikes, "#dislikes": models.FieldDislikes})
}

// RecordDislike adds targetID to the user's dislikes set, symmetrically
// deleting it from likes so a previously liked profile moves between sets
// instead of occupying both.
func (ps *ProfileService) RecordDislike(ctx context.Context, userID, targetID string) error {
	return ps.moveInteraction(ctx, userID, targetID,
		"ADD #dislikes :id DELETE #likes :id",
		map[string]string{"#dislikes": models.FieldDislikes, "#likes": models.FieldLikes})
}

func (ps *ProfileService) moveInteraction(ctx context.Context, userID, targetID, updateExpression string, names map[string]string) error {
	if userID == "" || targetID == "" || userID == targetID {
		return fmt.Errorf("%w: invalid interaction %q -> %q", ErrValidation, userID, targetID)
	}
	_, err := ps.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression,
		"attribute_exists(userId)", profileKey(userID),
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberSS{Value: []string{targetID}},
		}, names)
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("%w: profile %s", ErrNotFound, userID)
		}
		return err
	}
	return nil
}

// CreateMatch creates the match record for the pair and moves both users'
// interaction sets to matched, all in one transaction keyed on the sorted
// pair. When a concurrent commit from the counterpart already created the
// record, the existing match is returned with created=false.
func (ps *ProfileService) CreateMatch(ctx context.Context, requesterID, candidateID string, createdAt time.Time) (*models.Match, bool, error) {
	match := models.NewMatch(uuid.NewString(), requesterID, candidateID, createdAt)
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal match: %w", err)
	}

	matchesTable := models.MatchesTable
	profilesTable := models.UserProfilesTable
	putCondition := "attribute_not_exists(pairKey)"
	moveExpression := "ADD #matches :id DELETE #likes :id, #dislikes :id"
	moveNames := map[string]string{
		"#matches":  models.FieldMatches,
		"#likes":    models.FieldLikes,
		"#dislikes": models.FieldDislikes,
	}
	updateCondition := "attribute_exists(userId)"

	moveToMatched := func(userID, counterpartID string) *types.Update {
		return &types.Update{
			TableName:                &profilesTable,
			Key:                      profileKey(userID),
			UpdateExpression:         &moveExpression,
			ConditionExpression:      &updateCondition,
			ExpressionAttributeNames: moveNames,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":id": &types.AttributeValueMemberSS{Value: []string{counterpartID}},
			},
		}
	}

	err = ps.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           &matchesTable,
			Item:                item,
			ConditionExpression: &putCondition,
		}},
		{Update: moveToMatched(requesterID, candidateID)},
		{Update: moveToMatched(candidateID, requesterID)},
	})
	if err == nil {
		return &match, true, nil
	}
	if !isConditionFailure(err) {
		return nil, false, err
	}

	// The pair key already exists: the counterpart's commit won the race.
	existing, lookupErr := ps.GetMatchByPair(ctx, requesterID, candidateID)
	if lookupErr != nil {
		return nil, false, fmt.Errorf("match transaction lost but record missing: %w", lookupErr)
	}
	log.Printf("Match for pair %s already created concurrently", existing.PairKey)
	return existing, false, nil
}

// GetMatchByPair loads the match record for an unordered user pair.
func (ps *ProfileService) GetMatchByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: models.PairKey(userA, userB)},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, models.PairKey(userA, userB))
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}
