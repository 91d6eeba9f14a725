package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/awais7012/lms-2/internal/models"
)

// Collection names
const (
	collUsers           = "users"
	collStudentProfiles = "student_profiles"
	collTeacherProfiles = "teacher_profiles"
	collPasswordReset   = "password_reset"
)

// MongoStore implements Store on top of a MongoDB database
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and prepares the collections and indexes
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &MongoStore{
		client: client,
		db:     client.Database(database),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	// Unique email per account
	_, err := s.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	// Reset records are queried by email and reaped by expiry. The TTL
	// index is a cleanup backstop; validity checks always compare
	// expires_at against the caller's clock.
	_, err = s.db.Collection(collPasswordReset).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create password_reset email index: %w", err)
	}
	_, err = s.db.Collection(collPasswordReset).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create password_reset ttl index: %w", err)
	}

	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	res, err := s.db.Collection(collUsers).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"hashed_password": passwordHash,
			"updated_at":      time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStore) CreateProfile(ctx context.Context, role string, profile *models.Profile) error {
	coll := collStudentProfiles
	if role == models.RoleTeacher {
		coll = collTeacherProfiles
	}
	if _, err := s.db.Collection(coll).InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to insert %s profile: %w", role, err)
	}
	return nil
}

func (s *MongoStore) CreateReset(ctx context.Context, record *models.PasswordReset) error {
	if _, err := s.db.Collection(collPasswordReset).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert reset record: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteResetsByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.db.Collection(collPasswordReset).DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reset records: %w", err)
	}
	return res.DeletedCount, nil
}

// VerifyReset is a single UpdateOne so the unverified→verified transition is
// atomic on the server side.
func (s *MongoStore) VerifyReset(ctx context.Context, email, otp string, now time.Time) error {
	res, err := s.db.Collection(collPasswordReset).UpdateOne(
		ctx,
		bson.M{
			"email":      email,
			"otp":        otp,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"verified": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to verify reset record: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrResetNotFound
	}
	return nil
}

func (s *MongoStore) GetVerifiedReset(
	ctx context.Context,
	email string,
	now time.Time,
) (*models.PasswordReset, error) {
	var record models.PasswordReset
	err := s.db.Collection(collPasswordReset).FindOne(ctx, bson.M{
		"email":      email,
		"verified":   true,
		"expires_at": bson.M{"$gt": now},
	}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResetNotFound
		}
		return nil, fmt.Errorf("failed to find verified reset record: %w", err)
	}
	return &record, nil
}

func (s *MongoStore) DeleteReset(ctx context.Context, id string) error {
	if _, err := s.db.Collection(collPasswordReset).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete reset record: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
