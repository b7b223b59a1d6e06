package utils

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID parses a hex identifier from a path. Anything that is not a
// valid ObjectID cannot name a record, so it is reported as notFound.
func ParseObjectID(id, notFound string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, NotFoundError(notFound)
	}
	return oid, nil
}
