package domain

import "time"

// Client is a customer of the firm. Projects copy its name and location.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"clientName" bson:"clientName" validate:"notblank"`
	Sector    string    `json:"sector" bson:"sector" validate:"notblank"`
	Location  string    `json:"location" bson:"location" validate:"notblank"`
	CreatedAt time.Time `json:"creationTime" bson:"creationTime"`
}

// ClientPatch is a partial client update.
type ClientPatch struct {
	Name     *string `bson:"clientName,omitempty" validate:"omitempty,notblank"`
	Sector   *string `bson:"sector,omitempty" validate:"omitempty,notblank"`
	Location *string `bson:"location,omitempty" validate:"omitempty,notblank"`
}

// Empty reports whether the patch changes nothing.
func (p ClientPatch) Empty() bool {
	return p.Name == nil && p.Sector == nil && p.Location == nil
}
