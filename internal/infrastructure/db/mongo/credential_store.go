package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/becas/scholarship-system/internal/core/domain"
)

const identitySequence = "identities"

// CredentialStore implements ports.CredentialStore on the identities collection.
// Integer ids are drawn from a counters document so tokens carry numeric subjects.
type CredentialStore struct {
	db       *mongo.Database
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{
		db:       db,
		coll:     db.Collection(identitiesCollection),
		counters: db.Collection(countersCollection),
	}
}

type mongoIdentity struct {
	ID           int64  `bson:"_id"`
	DisplayName  string `bson:"display_name"`
	Surname      string `bson:"surname,omitempty"`
	Email        string `bson:"email,omitempty"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (m mongoIdentity) toDomain() *domain.Identity {
	return &domain.Identity{
		ID:           m.ID,
		DisplayName:  m.DisplayName,
		Surname:      m.Surname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    unixToTime(m.CreatedAt),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
}

// FindByIdentifier prefers an email match, then the lowest id with that display name.
func (s *CredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	u, err := s.FindByEmail(ctx, identifier)
	if err == nil || !errors.Is(err, domain.ErrIdentityNotFound) {
		return u, err
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.findOne(ctx, bson.M{"display_name": identifier}, opts)
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	email = strings.ToLower(email)
	if email == "" {
		return nil, domain.ErrIdentityNotFound
	}
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *CredentialStore) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *CredentialStore) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := s.coll.FindOne(ctx, filter, opts...).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return mi.toDomain(), nil
}

// Create relies on the unique email index; a duplicate key maps to ErrEmailTaken.
func (s *CredentialStore) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoIdentity{
		ID:           id,
		DisplayName:  identity.DisplayName,
		Surname:      identity.Surname,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Role:         identity.Role,
		CreatedAt:    identity.CreatedAt.Unix(),
		UpdatedAt:    identity.UpdatedAt.Unix(),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *CredentialStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": identitySequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next identity id: %w", err)
	}
	return counter.Seq, nil
}

func (s *CredentialStore) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": newHash, "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (s *CredentialStore) Remove(ctx context.Context, id int64) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (s *CredentialStore) List(ctx context.Context) ([]*domain.Identity, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoIdentity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}
	out := make([]*domain.Identity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
