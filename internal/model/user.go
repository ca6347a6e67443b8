package model

import "time"

// User is a player profile stored in the users collection.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Username    string    `json:"username" bson:"username"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	GameplayID  string    `json:"gameplay_id" bson:"gameplay_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Game is a catalog entry for a playable game.
type Game struct {
	ID          int    `json:"id" bson:"id"`
	Code        string `json:"code" bson:"code"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}
