package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/organmatch/matching-service/internal/core/domain"
)

func TestMatchFilter(t *testing.T) {
	f := matchFilter(domain.MatchCriteria{
		Organ:      "kidney",
		BloodGroup: "O+",
		Role:       domain.RoleRecipient,
		ExcludeID:  7,
	})

	if f["organ"] != "kidney" || f["blood_group"] != "O+" || f["role"] != "Recipient" {
		t.Fatalf("unexpected equality terms: %+v", f)
	}
	ne, ok := f["_id"].(bson.M)
	if !ok || ne["$ne"] != int64(7) {
		t.Fatalf("expected _id $ne 7, got %+v", f["_id"])
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	doc := mongoUser{
		ID: 3, Username: "bob", PasswordHash: "h", Role: "Donor",
		Age: 51, BloodGroup: "A-", Phone: "+1", Organ: "liver",
	}
	u := doc.toDomain()
	if u.ID != 3 || u.Role != domain.RoleDonor || u.Age != 51 || u.Organ != "liver" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
