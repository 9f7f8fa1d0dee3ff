package models

import "time"

// Photo is immutable after upload; AutoTags is the characterizer output
// computed once during the upload pipeline.
type Photo struct {
	ID            string
	UserID        string
	Title         string
	Caption       string
	Location      string
	PeoplePresent string
	AutoTags      string
	URL           string
	UploadedAt    time.Time
}

// PhotoWithOwner carries the owning username alongside the photo for
// feed and profile rendering.
type PhotoWithOwner struct {
	Photo
	OwnerUsername string
}
