package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	if !ok || got != oid {
		t.Fatalf("objectID(%q) = %v, %v", oid.Hex(), got, ok)
	}
	if _, ok := objectID("not-a-hex-id"); ok {
		t.Error("expected invalid id to be rejected")
	}
}

func TestSetDocSkipsAbsentFields(t *testing.T) {
	name := "ERP"
	set := setDoc{}
	set.str("projectName", &name)
	set.str("orderYear", nil)
	set.val("interventionTeam", nil, false)

	u := set.update()
	inner, ok := u["$set"].(bson.M)
	if !ok {
		t.Fatalf("unexpected update shape: %#v", u)
	}
	if len(inner) != 1 || inner["projectName"] != "ERP" {
		t.Errorf("$set = %#v", inner)
	}
}
