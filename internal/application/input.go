package application

// UserInput carries user fields for create and update. Update treats blank
// fields as "keep existing". Cars == nil means the owned-car set is not
// touched; an empty non-nil slice clears it.
type UserInput struct {
	FirstName string
	LastName  string
	Birthday  string
	Login     string
	Password  string
	Email     string
	Phone     string
	Cars      []CarInput
}

// CarInput carries car fields for create and update. Year is a pointer so an
// absent year can be told apart from year zero.
type CarInput struct {
	Year         *int
	LicensePlate string
	Model        string
	Color        string
}

func (c CarInput) year() int {
	if c.Year == nil {
		return 0
	}
	return *c.Year
}
