package chat

// User mirrors a host-application user row. Rows are created and updated only by
// the user mirror; the chat core treats them as read-only.
type User struct {
	ID             string  `db:"id" json:"id"`
	FullName       string  `db:"fullname" json:"fullname"`
	ProfilePicture *string `db:"profile_picture" json:"profilePicture"`
}
