package model

import "time"

// Roles stored in the user_profiles table.  PROVIDER is a restricted
// administrative role scoped to events it owns; ADMIN may manage any
// event and view all registrations.
const (
	RoleCustomer = "CUSTOMER"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// UserProfile mirrors the user_profiles table.  The profile is created
// once at sign-up, paired 1:1 with the account's credentials.  Email is
// read-only after creation and IsAdmin can only be changed directly in
// the database.
//
// Fields:
//  ID                 - primary key, shared with the auth identity.
//  Username           - unique handle (>= 3 characters).
//  FullName           - display name.
//  Email              - sign-up email, read-only afterwards.
//  Phone              - contact phone number.
//  Age                - 13..120.
//  CountryOfResidence - free-form country name.
//  CityTownName       - free-form city or town name.
//  IsAdmin            - full administrator flag.
//  Role               - CUSTOMER, PROVIDER or ADMIN.
//  CreatedAt          - creation timestamp.
//  UpdatedAt          - last update timestamp.
type UserProfile struct {
	ID                 uint64    `json:"id"`
	Username           string    `json:"username"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Age                int       `json:"age"`
	CountryOfResidence string    `json:"country_of_residence"`
	CityTownName       string    `json:"city_town_name"`
	IsAdmin            bool      `json:"is_admin"`
	Role               string    `json:"role"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
