package domain

import "testing"

func TestRole_Complement(t *testing.T) {
	cases := []struct {
		in   Role
		want Role
	}{
		{RoleDonor, RoleRecipient},
		{RoleRecipient, RoleDonor},
		{Role("Other"), RoleDonor},
	}
	for _, tc := range cases {
		if got := tc.in.Complement(); got != tc.want {
			t.Errorf("Complement(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleDonor.Valid() || !RoleRecipient.Valid() {
		t.Fatal("expected Donor and Recipient to be valid")
	}
	if Role("donor").Valid() {
		t.Fatal("role comparison must be exact")
	}
}

func TestCriteriaFor(t *testing.T) {
	cases := []struct {
		name string
		u    User
		want MatchCriteria
	}{
		{
			"donor looks for recipients",
			User{ID: 1, Role: RoleDonor, Organ: "kidney", BloodGroup: "O+"},
			MatchCriteria{Organ: "kidney", BloodGroup: "O+", Role: RoleRecipient, ExcludeID: 1},
		},
		{
			"recipient looks for donors",
			User{ID: 2, Role: RoleRecipient, Organ: "Liver", BloodGroup: "AB-"},
			MatchCriteria{Organ: "Liver", BloodGroup: "AB-", Role: RoleDonor, ExcludeID: 2},
		},
	}
	for _, tc := range cases {
		if got := CriteriaFor(&tc.u); got != tc.want {
			t.Errorf("%s: want %+v, got %+v", tc.name, tc.want, got)
		}
	}
}
