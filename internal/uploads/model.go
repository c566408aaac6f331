package uploads

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleLender marks records created through the upload endpoint. Borrowers
// only read; they never get a record of their own.
const RoleLender = "lender"

// Upload is one shared document pair: the front page plus an optional table
// of contents, tagged with the academic metadata the lender filled in.
// Records are append-only. Email ties the upload to a user by value only;
// nothing enforces that the user exists.
type Upload struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Role      string             `bson:"role" json:"role"`
	Type      string             `bson:"type" json:"type"`
	Branch    string             `bson:"branch" json:"branch"`
	Sem       string             `bson:"sem" json:"sem"`
	Subject   string             `bson:"subject" json:"subject"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Author    string             `bson:"author" json:"author"`
	FrontFile string             `bson:"frontFile" json:"frontFile"`
	TocFile   *string            `bson:"tocFile" json:"tocFile"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Metadata carries the lender-supplied form fields for a new upload.
type Metadata struct {
	Type    string
	Branch  string
	Sem     string
	Subject string
	Email   string
	Phone   string
	Author  string
}

// New builds a lender Upload record, stamping the creation time.
func New(meta Metadata, frontFile string, tocFile *string, now time.Time) *Upload {
	return &Upload{
		Role:      RoleLender,
		Type:      meta.Type,
		Branch:    meta.Branch,
		Sem:       meta.Sem,
		Subject:   meta.Subject,
		Email:     meta.Email,
		Phone:     meta.Phone,
		Author:    meta.Author,
		FrontFile: frontFile,
		TocFile:   tocFile,
		CreatedAt: now,
	}
}
