package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

const accountCollection = "accounts"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique username index that backs the uniqueness
// invariant. Duplicate inserts surface as ErrUsernameTaken.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	FirstName    string             `bson:"first_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty"`
	Description  string             `bson:"description,omitempty"`
	Motto        string             `bson:"motto,omitempty"`
	ProfilePhoto string             `bson:"profile_photo,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	BlockedAt    *int64             `bson:"blocked_at,omitempty"`
}

func (r *AccountRepository) Insert(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	doc := toDoc(acc)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *acc
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []domain.Account
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, *toDomain(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, acc *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(acc.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	var blockedAt *int64
	if acc.BlockedAt != nil {
		ts := acc.BlockedAt.Unix()
		blockedAt = &ts
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":     string(acc.Status),
		"blocked_at": blockedAt,
	}})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toDoc(acc *domain.Account) accountDoc {
	var blockedAt *int64
	if acc.BlockedAt != nil {
		ts := acc.BlockedAt.Unix()
		blockedAt = &ts
	}
	return accountDoc{
		Username:     acc.Username,
		Email:        acc.Email,
		PasswordHash: acc.PasswordHash,
		Role:         string(acc.Role),
		Status:       string(acc.Status),
		FirstName:    acc.FirstName,
		LastName:     acc.LastName,
		Description:  acc.Description,
		Motto:        acc.Motto,
		ProfilePhoto: acc.ProfilePhoto,
		CreatedAt:    acc.CreatedAt.Unix(),
		BlockedAt:    blockedAt,
	}
}

func toDomain(doc *accountDoc) *domain.Account {
	var blockedAt *time.Time
	if doc.BlockedAt != nil {
		t := time.Unix(*doc.BlockedAt, 0).UTC()
		blockedAt = &t
	}
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		Status:       domain.AccountStatus(doc.Status),
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Description:  doc.Description,
		Motto:        doc.Motto,
		ProfilePhoto: doc.ProfilePhoto,
		CreatedAt:    time.Unix(doc.CreatedAt, 0).UTC(),
		BlockedAt:    blockedAt,
	}
}
