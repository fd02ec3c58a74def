package account

// User owns one demo account and authenticates with an id/password pair.
// This is deliberately minimal bookkeeping for the console demo, not a real
// credential store.
type User struct {
	ID          string
	DisplayName string

	password string
	account  *Account
}

// NewUser creates a User with a freshly opened, empty account.
func NewUser(id, password, displayName string, feeRate float64) *User {
	return &User{
		ID:          id,
		DisplayName: displayName,
		password:    password,
		account:     New(id+"-acc", 0, feeRate),
	}
}

// Login reports whether the given credentials match.
func (u *User) Login(id, password string) bool {
	return u.ID == id && u.password == password
}

// Account returns the user's account.
func (u *User) Account() *Account { return u.account }
