package domain

import "time"

// Fixed intervention team slots.
const (
	RoleChefDeProjet        = "Chef de Projet"
	RoleConsultantTechnique = "Consultant Technique"

	teamFixedSlots = 3
	flagYes        = "Yes"
)

// ClientRef is the denormalised client snapshot kept on a project.
type ClientRef struct {
	Name    string `json:"Name" bson:"Name"`
	Address string `json:"ClientAdress" bson:"ClientAdress"`
}

// FirmContact is a partner of the firm attached to the project.
type FirmContact struct {
	Name string `json:"Name" bson:"Name"`
}

// TeamMember is one row of the intervention team.
type TeamMember struct {
	Name                string `json:"name" bson:"name"`
	Role                string `json:"role" bson:"role"`
	ChefOfProject       string `json:"ChefOfProject" bson:"ChefOfProject"`
	TechnicalConsultant string `json:"technicalConsultant" bson:"technicalConsultant"`
}

// Project is a consulting engagement. Date and duration fields are free-form.
type Project struct {
	ID                  string        `json:"id" bson:"_id,omitempty"`
	Name                string        `json:"projectName" bson:"projectName" validate:"notblank"`
	Clients             []ClientRef   `json:"clientName" bson:"clientName"`
	FirmContacts        []FirmContact `json:"mazars" bson:"mazars"`
	Team                []TeamMember  `json:"interventionTeam" bson:"interventionTeam"`
	Duration            string        `json:"projectDuration" bson:"projectDuration" validate:"notblank"`
	CompletionDate      string        `json:"completionDate" bson:"completionDate" validate:"notblank"`
	OrderYear           string        `json:"orderYear" bson:"orderYear" validate:"notblank"`
	StartDate           string        `json:"startDate" bson:"startDate" validate:"notblank"`
	PartnerNames        string        `json:"partnerNames" bson:"partnerNames"`
	ServiceDescription  string        `json:"serviceDescription" bson:"serviceDescription"`
	MissionDeliverables string        `json:"missionDeliverables" bson:"missionDeliverables"`
	TechnicalOffer      string        `json:"technicalOffer" bson:"technicalOffer"`
	PurchaseOrder       string        `json:"BDC" bson:"BDC"`
	MeetingMinutes      string        `json:"PV" bson:"PV"`
	CreatedAt           time.Time     `json:"creationTime" bson:"creationTime"`
	UpdatedAt           time.Time     `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// ProjectFiles holds the attachment fields of a project before resolution.
type ProjectFiles struct {
	TechnicalOffer Attachment
	PurchaseOrder  Attachment
	MeetingMinutes Attachment
}

// ProjectPatch is a partial project update.
type ProjectPatch struct {
	Name                *string `validate:"omitempty,notblank"`
	Clients             []ClientRef
	FirmContacts        []FirmContact
	Team                []TeamMember
	Duration            *string `validate:"omitempty,notblank"`
	CompletionDate      *string `validate:"omitempty,notblank"`
	OrderYear           *string `validate:"omitempty,notblank"`
	StartDate           *string `validate:"omitempty,notblank"`
	PartnerNames        *string
	ServiceDescription  *string
	MissionDeliverables *string

	// Resolved attachment locators; nil leaves the stored value untouched.
	TechnicalOffer *string
	PurchaseOrder  *string
	MeetingMinutes *string
}

// DefaultTeam returns the three fixed slots of a new intervention team.
func DefaultTeam() []TeamMember {
	return []TeamMember{
		{},
		{Role: RoleChefDeProjet, ChefOfProject: flagYes},
		{Role: RoleConsultantTechnique, TechnicalConsultant: flagYes},
	}
}

// NormalizeTeam pads team to the fixed slots and pins the semantic roles of
// slots 1 and 2. Members past the fixed slots are kept as given.
func NormalizeTeam(team []TeamMember) []TeamMember {
	out := DefaultTeam()
	for i, m := range team {
		switch {
		case i == 0:
			out[0] = m
		case i < teamFixedSlots:
			out[i].Name = m.Name
		default:
			out = append(out, m)
		}
	}
	return out
}
