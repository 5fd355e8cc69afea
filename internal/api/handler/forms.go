package handler

import (
	"strconv"

	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

// Messages shown inline on the forms.
const (
	msgPasswordMismatch = "Passwords do not match"
	msgUsernameTaken    = "Username already exists!"
	msgInvalidPassword  = "Invalid Password"
	msgInvalidForm      = "Invalid form submission"
)

type registerForm struct {
	Username        string `form:"username"         validate:"required"`
	Password        string `form:"password"         validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
	Role            string `form:"role"             validate:"required,oneof=Donor Recipient"`
	Age             string `form:"age"              validate:"required,number"`
	BloodGroup      string `form:"blood_group"      validate:"required"`
	Phone           string `form:"phone"            validate:"required"`
	Organ           string `form:"organ"            validate:"required"`
}

// values echoes the non-secret fields back into a re-rendered form.
func (f registerForm) values() map[string]string {
	return map[string]string{
		"username":    f.Username,
		"role":        f.Role,
		"age":         f.Age,
		"blood_group": f.BloodGroup,
		"phone":       f.Phone,
		"organ":       f.Organ,
	}
}

// input converts a validated form. The only failure left is an age that
// does not fit in an int.
func (f registerForm) input() (ports.RegisterInput, error) {
	age, err := strconv.Atoi(f.Age)
	if err != nil {
		return ports.RegisterInput{}, err
	}
	return ports.RegisterInput{
		Username:        f.Username,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		Role:            domain.Role(f.Role),
		Age:             age,
		BloodGroup:      f.BloodGroup,
		Phone:           f.Phone,
		Organ:           f.Organ,
	}, nil
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f loginForm) values() map[string]string {
	return map[string]string{"username": f.Username}
}
