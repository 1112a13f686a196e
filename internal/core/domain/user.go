package domain

import "time"

// User is a registered account. Optional profile fields are nil until set.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time

	AvatarURL *string
	Title     *string
	Company   *string
	Bio       *string
	Phone     *string
	Location  *string
	Timezone  *string

	LastUpdated *time.Time
}

// ProfileField names a mutable profile attribute.
type ProfileField string

const (
	FieldName     ProfileField = "name"
	FieldTitle    ProfileField = "title"
	FieldCompany  ProfileField = "company"
	FieldBio      ProfileField = "bio"
	FieldPhone    ProfileField = "phone"
	FieldLocation ProfileField = "location"
	FieldTimezone ProfileField = "timezone"
)

// ProfileFields lists the fields accepted by a profile update, in storage order.
var ProfileFields = []ProfileField{
	FieldName,
	FieldTitle,
	FieldCompany,
	FieldBio,
	FieldPhone,
	FieldLocation,
	FieldTimezone,
}

// ProfileChanges is a sparse profile update. A field absent from the map is
// left untouched; a field mapped to nil is cleared.
type ProfileChanges map[ProfileField]*string

// Has reports whether the update touches field.
func (c ProfileChanges) Has(field ProfileField) bool {
	_, ok := c[field]
	return ok
}

// Apply copies the present fields onto u.
func (c ProfileChanges) Apply(u *User) {
	for field, value := range c {
		switch field {
		case FieldName:
			if value != nil {
				u.Name = *value
			}
		case FieldTitle:
			u.Title = value
		case FieldCompany:
			u.Company = value
		case FieldBio:
			u.Bio = value
		case FieldPhone:
			u.Phone = value
		case FieldLocation:
			u.Location = value
		case FieldTimezone:
			u.Timezone = value
		}
	}
}
