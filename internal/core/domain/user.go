package domain

// User is an authenticated operator of a company's books. Referenced by
// journal audit fields (createdBy/postedBy/voidedBy).
type User struct {
	UserID       string `json:"userID"`
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
