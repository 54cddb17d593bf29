package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseMedia stores metadata about a demo image or video uploaded for an
// exercise. The actual file resides in S3; clients upload directly via a
// presigned URL and confirm afterwards.
type ExerciseMedia struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	UploaderID  primitive.ObjectID `bson:"uploaderId" json:"uploaderId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // The unique key in the S3 bucket - internal use
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // e.g., "video/mp4", "image/jpeg"
	Size        int64              `bson:"size" json:"size"`               // File size in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
