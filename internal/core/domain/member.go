package domain

import "time"

// Member is a consultant of the intervention teams.
type Member struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name" validate:"notblank"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Experience    string    `json:"experience" bson:"experience" validate:"notblank"`
	Position      string    `json:"position" bson:"position" validate:"notblank"`
	Certification string    `json:"certification" bson:"certification"`
	Speciality    string    `json:"speciality" bson:"speciality" validate:"notblank"`
	Diploma       string    `json:"diploma" bson:"diploma" validate:"notblank"`
	Projects      string    `json:"projects" bson:"projects" validate:"notblank"`
	Service       string    `json:"service,omitempty" bson:"service,omitempty"`
	CVShort       string    `json:"cvShort,omitempty" bson:"cvShort,omitempty"`
	CVLong        string    `json:"cvLong,omitempty" bson:"cvLong,omitempty"`
	CreatedAt     time.Time `json:"creationTime" bson:"creationTime"`
	UpdatedAt     time.Time `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// MemberFiles holds the attachment fields of a member before resolution.
type MemberFiles struct {
	Certification Attachment
	CVShort       Attachment
	CVLong        Attachment
}

// MemberPatch is a partial member update.
type MemberPatch struct {
	Name       *string `validate:"omitempty,notblank"`
	Email      *string `validate:"omitempty,email"`
	Experience *string `validate:"omitempty,notblank"`
	Position   *string `validate:"omitempty,notblank"`
	Speciality *string `validate:"omitempty,notblank"`
	Diploma    *string `validate:"omitempty,notblank"`
	Projects   *string `validate:"omitempty,notblank"`
	Service    *string

	// Resolved attachment locators; nil leaves the stored value untouched.
	Certification *string
	CVShort       *string
	CVLong        *string
}
