// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. The client is
// created once in ConnectDB and disconnected in Shutdown; nothing else
// opens or holds its own handle.
type DBDeps struct {
	UGCMongoClient   *mongo.Client
	UGCMongoDatabase *mongo.Database
}
