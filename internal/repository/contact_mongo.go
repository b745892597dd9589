package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongodb names of contacts collection and its unique email index
const (
	ContactsCollection = "contacts"
	MongoEmailIndex    = "contacts_email_key"
)

type mongoContactRepository struct {
	coll *mongo.Collection
}

// NewMongoContactRepository builds ContactRepository backed by mongodb
func NewMongoContactRepository(db *mongo.Database) ContactRepository {
	return &mongoContactRepository{coll: db.Collection(ContactsCollection)}
}

func (r *mongoContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoContactRepository) FindAll(ctx context.Context) ([]*model.Contact, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := make([]*model.Contact, 0)
	for cursor.Next(ctx) {
		var c model.Contact
		if err := cursor.Decode(&c); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *mongoContactRepository) Create(ctx context.Context, c *model.Contact) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if isMongoEmailViolation(err) {
			return apperrors.NewDuplicateEmailErr(c.Email)
		}
		return err
	}
	return nil
}

func (r *mongoContactRepository) Update(ctx context.Context, id string, p model.ContactPatch) (*model.Contact, error) {
	set := r.setDocument(p)
	if len(set) == 0 {
		c, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if c == nil {
			return nil, apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
		}
		return c, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c model.Contact
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
		}

		if isMongoEmailViolation(err) && p.Email != nil {
			return nil, apperrors.NewDuplicateEmailErr(*p.Email)
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoContactRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
	}
	return nil
}

func (r *mongoContactRepository) setDocument(p model.ContactPatch) bson.D {
	set := bson.D{}
	fields := []struct {
		name  string
		value *string
	}{
		{name: "firstName", value: p.FirstName},
		{name: "lastName", value: p.LastName},
		{name: "email", value: p.Email},
		{name: "phone", value: p.Phone},
		{name: "company", value: p.Company},
		{name: "jobTitle", value: p.JobTitle},
	}

	for _, f := range fields {
		if f.value != nil {
			set = append(set, bson.E{Key: f.name, Value: *f.value})
		}
	}
	return set
}

// isMongoEmailViolation reports duplicate key errors raised by unique email index only, duplicate _id is not an email conflict
func isMongoEmailViolation(err error) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}

	var serverErr mongo.ServerError
	if !errors.As(err, &serverErr) {
		return false
	}
	return serverErr.HasErrorMessage(fmt.Sprintf("index: %s ", MongoEmailIndex))
}
