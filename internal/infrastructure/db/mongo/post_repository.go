package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

const postsCollection = "posts"

// PostRepository stores posts with likes and comments embedded.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(postsCollection)}
}

type mongoLike struct {
	User primitive.ObjectID `bson:"user"`
}

type mongoComment struct {
	ID     string             `bson:"_id"`
	User   primitive.ObjectID `bson:"user"`
	Text   string             `bson:"text"`
	Name   string             `bson:"name"`
	Avatar string             `bson:"avatar"`
	Date   time.Time          `bson:"date"`
}

type mongoPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	User     primitive.ObjectID `bson:"user"`
	Text     string             `bson:"text"`
	Likes    []mongoLike        `bson:"likes"`
	Comments []mongoComment     `bson:"comments"`
	Date     time.Time          `bson:"date"`
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := postFromDomain(p)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all posts, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{})
}

// ListByAuthor returns the posts of userID, newest first.
func (r *PostRepository) ListByAuthor(ctx context.Context, userID string) ([]*domain.Post, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"user": uid})
}

// Save replaces the stored post with p. It reports domain.ErrPostNotFound if
// the post was deleted in the meantime.
func (r *PostRepository) Save(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := postFromDomain(p)
	if err != nil {
		return err
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteByAuthor removes every post written by userID and returns how many went.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := objectID(userID)
	if err != nil {
		return 0, err
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"user": uid})
	if err != nil {
		return 0, fmt.Errorf("delete posts: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes used by the list queries.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func postFromDomain(p *domain.Post) (mongoPost, error) {
	uid, err := objectID(p.UserID)
	if err != nil {
		return mongoPost{}, err
	}

	doc := mongoPost{
		User:     uid,
		Text:     p.Text,
		Likes:    make([]mongoLike, 0, len(p.Likes)),
		Comments: make([]mongoComment, 0, len(p.Comments)),
		Date:     p.Date,
	}
	if p.ID != "" {
		if doc.ID, err = objectID(p.ID); err != nil {
			return mongoPost{}, err
		}
	}

	for _, l := range p.Likes {
		lid, err := objectID(l.UserID)
		if err != nil {
			return mongoPost{}, err
		}
		doc.Likes = append(doc.Likes, mongoLike{User: lid})
	}
	for _, c := range p.Comments {
		cid, err := objectID(c.UserID)
		if err != nil {
			return mongoPost{}, err
		}
		doc.Comments = append(doc.Comments, mongoComment{
			ID:     c.ID,
			User:   cid,
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date,
		})
	}
	return doc, nil
}

func (d mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:       d.ID.Hex(),
		UserID:   d.User.Hex(),
		Text:     d.Text,
		Likes:    make([]domain.Like, 0, len(d.Likes)),
		Comments: make([]domain.Comment, 0, len(d.Comments)),
		Date:     d.Date.UTC(),
	}
	for _, l := range d.Likes {
		p.Likes = append(p.Likes, domain.Like{UserID: l.User.Hex()})
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, domain.Comment{
			ID:     c.ID,
			UserID: c.User.Hex(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date.UTC(),
		})
	}
	return p
}
