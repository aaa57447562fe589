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

const profilesCollection = "profiles"

// ProfileRepository stores one document per user in the profiles collection,
// with experience and education embedded.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type mongoSocial struct {
	YouTube   string `bson:"youtube,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
}

type mongoExperience struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	From        time.Time  `bson:"from"`
	To          *time.Time `bson:"to,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type mongoEducation struct {
	ID           string     `bson:"_id"`
	School       string     `bson:"school"`
	Degree       string     `bson:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"`
	From         time.Time  `bson:"from"`
	To           *time.Time `bson:"to,omitempty"`
	Current      bool       `bson:"current"`
	Description  string     `bson:"description,omitempty"`
}

type mongoProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user"`
	Company        string             `bson:"company,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	Status         string             `bson:"status"`
	GithubUsername string             `bson:"githubusername,omitempty"`
	Skills         []string           `bson:"skills"`
	Social         mongoSocial        `bson:"social"`
	Experience     []mongoExperience  `bson:"experience"`
	Education      []mongoEducation   `bson:"education"`
	Date           time.Time          `bson:"date"`
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	var doc mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"user": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var docs []mongoProfile
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(docs))
	for _, d := range docs {
		profiles = append(profiles, d.toDomain())
	}
	return profiles, nil
}

// Create inserts the first profile of p.UserID. The unique index on user
// turns a concurrent second insert into domain.ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := profileFromDomain(p)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// Update replaces the profile document of p.UserID. It never inserts: a
// profile deleted in the meantime is reported as domain.ErrProfileNotFound.
func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := profileFromDomain(p)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"user": doc.User}, doc)
	if err != nil {
		return nil, fmt.Errorf("replace profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return doc.toDomain(), nil
}

// DeleteByUser removes the user's profile. A missing profile is not an error.
func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user": uid}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// EnsureIndexes enforces at most one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func profileFromDomain(p *domain.Profile) (mongoProfile, error) {
	uid, err := objectID(p.UserID)
	if err != nil {
		return mongoProfile{}, err
	}

	doc := mongoProfile{
		User:           uid,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social: mongoSocial{
			YouTube:   p.Social.YouTube,
			Facebook:  p.Social.Facebook,
			Twitter:   p.Social.Twitter,
			Instagram: p.Social.Instagram,
			LinkedIn:  p.Social.LinkedIn,
		},
		Experience: make([]mongoExperience, 0, len(p.Experience)),
		Education:  make([]mongoEducation, 0, len(p.Education)),
		Date:       p.Date,
	}
	if p.ID != "" {
		if doc.ID, err = objectID(p.ID); err != nil {
			return mongoProfile{}, err
		}
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}

	for _, e := range p.Experience {
		doc.Experience = append(doc.Experience, mongoExperience(e))
	}
	for _, e := range p.Education {
		doc.Education = append(doc.Education, mongoEducation(e))
	}
	return doc, nil
}

func (d mongoProfile) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:             d.ID.Hex(),
		UserID:         d.User.Hex(),
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		Status:         d.Status,
		GithubUsername: d.GithubUsername,
		Skills:         d.Skills,
		Social:         domain.Social(d.Social),
		Experience:     make([]domain.Experience, 0, len(d.Experience)),
		Education:      make([]domain.Education, 0, len(d.Education)),
		Date:           d.Date.UTC(),
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	for _, e := range d.Experience {
		p.Experience = append(p.Experience, domain.Experience(e))
	}
	for _, e := range d.Education {
		p.Education = append(p.Education, domain.Education(e))
	}
	return p
}
