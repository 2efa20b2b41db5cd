package domain

// AuthStatus reports whether the account connection behind the stats API is alive.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	TokenExpiry   string `json:"tokenExpiry,omitempty"`
}

type ProfileStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
}

// ProfileData is the identity block of the connected account.
type ProfileData struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Name           string       `json:"name"`
	Biography      string       `json:"biography,omitempty"`
	ProfilePicture string       `json:"profilePicture,omitempty"`
	AccountType    string       `json:"accountType"`
	Stats          ProfileStats `json:"stats"`
}

// ProfileWithEngagement extends ProfileData with the engagement summary the
// profile endpoint folds in.
type ProfileWithEngagement struct {
	ProfileData
	EngagementRate string `json:"engagementRate"`
	TotalLikes     int64  `json:"totalLikes"`
	TotalComments  int64  `json:"totalComments"`
	AvgPerPost     int64  `json:"avgPerPost"`
}

type EngagementSummary struct {
	Rate            float64 `json:"rate"`
	TotalLikes      int64   `json:"totalLikes"`
	TotalComments   int64   `json:"totalComments"`
	TotalEngagement int64   `json:"totalEngagement"`
	AvgPerPost      int64   `json:"avgPerPost"`
	PostsAnalyzed   int     `json:"postsAnalyzed"`
}

type ContentSummary struct {
	Breakdown        map[string]int `json:"breakdown"`
	TotalPosts       int            `json:"totalPosts"`
	PostingFrequency string         `json:"postingFrequency"`
}

// DashboardData is the aggregate payload behind the reporting tab.
type DashboardData struct {
	Profile    ProfileData       `json:"profile"`
	Engagement EngagementSummary `json:"engagement"`
	Content    ContentSummary    `json:"content"`
	TopPosts   []MediaPost       `json:"topPosts"`
}
