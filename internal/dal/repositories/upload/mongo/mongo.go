package mongorepo

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageDal represents upload metadata as stored in MongoDB.
type ImageDal struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	Entity       string             `bson:"entity"`
	EntityId     string             `bson:"entityId"`
	FileName     string             `bson:"fileName"`
	OriginalName string             `bson:"originalName"`
	SizeBytes    int64              `bson:"sizeBytes"`
	Width        int                `bson:"width"`
	Height       int                `bson:"height"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// ToModel converts ImageDal to upload.Image.
func (d *ImageDal) ToModel() (upload.Image, error) {
	entity, err := upload.ParseEntity(d.Entity)
	if err != nil {
		return upload.Image{}, fmt.Errorf("failed to parse entity: %w", err)
	}

	return upload.Image{
		ID:           d.Id.Hex(),
		Entity:       entity,
		EntityID:     d.EntityId,
		FileName:     d.FileName,
		OriginalName: d.OriginalName,
		SizeBytes:    d.SizeBytes,
		Width:        d.Width,
		Height:       d.Height,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// ImageDalFromModel converts upload.Image to ImageDal.
func ImageDalFromModel(img upload.Image) ImageDal {
	return ImageDal{
		Entity:       string(img.Entity),
		EntityId:     img.EntityID,
		FileName:     img.FileName,
		OriginalName: img.OriginalName,
		SizeBytes:    img.SizeBytes,
		Width:        img.Width,
		Height:       img.Height,
		CreatedAt:    img.CreatedAt,
	}
}

// MongoUploadRepository stores upload metadata in the uploads collection.
type MongoUploadRepository struct {
	client *mongodb.Client
}

func NewMongoUploadRepository(client *mongodb.Client) *MongoUploadRepository {
	return &MongoUploadRepository{client: client}
}

// Insert stores metadata for a processed upload.
func (r *MongoUploadRepository) Insert(ctx context.Context, img upload.Image) (upload.Image, error) {
	dal := ImageDalFromModel(img)
	dal.Id = primitive.NewObjectID()

	if _, err := r.client.Collection(mongodb.CollUploads).InsertOne(ctx, dal); err != nil {
		return upload.Image{}, fmt.Errorf("failed to insert upload: %w", err)
	}

	img.ID = dal.Id.Hex()

	return img, nil
}
