// Package adage defines the record kinds stored in the adages table. Every
// record in the table shares the adageId partition key and is discriminated
// by the "key" sort attribute, matching the layout of rows already written.
package adage

// SortKeyTitle is the sort key of the single title record per adage.
const SortKeyTitle = "title"

// SortKeyEpisodePrefix is the sort-key prefix shared by all episode records.
const SortKeyEpisodePrefix = "episode"

// EpisodeSortKey builds the per-author episode sort key. One episode row
// exists per (adage, author) pair.
func EpisodeSortKey(userID string) string {
	return SortKeyEpisodePrefix + "#" + userID
}

// TitleRecord is the root record of an adage. Created once; only its
// likePoints counter is ever mutated, via atomic increment.
type TitleRecord struct {
	AdageID           string `dynamodbav:"adageId" json:"adageId"`
	Key               string `dynamodbav:"key" json:"-"`
	Title             string `dynamodbav:"title" json:"title"`
	LikePoints        int    `dynamodbav:"likePoints" json:"likePoints"`
	RegistrationMonth int    `dynamodbav:"registrationMonth" json:"registrationMonth"`
	ByGuest           bool   `dynamodbav:"byGuest,omitempty" json:"byGuest,omitempty"`
}

// EpisodeRecord is a user's story attached to an adage. The userName field is
// a denormalized snapshot, only refreshed by an explicit profile rename.
type EpisodeRecord struct {
	AdageID    string `dynamodbav:"adageId" json:"adageId"`
	Key        string `dynamodbav:"key" json:"-"`
	UserID     string `dynamodbav:"userId" json:"userId"`
	UserName   string `dynamodbav:"userName" json:"userName"`
	Title      string `dynamodbav:"title" json:"title"`
	Episode    string `dynamodbav:"episode" json:"episode"`
	LikePoints int    `dynamodbav:"likePoints" json:"likePoints"`
	ByGuest    bool   `dynamodbav:"byGuest,omitempty" json:"byGuest,omitempty"`
}
