package models

// RatingCounts breaks a review total down by rating.
type RatingCounts struct {
	TotalReviews int `json:"total_reviews"`
	TotalAgain   int `json:"total_again"`
	TotalHard    int `json:"total_hard"`
	TotalGood    int `json:"total_good"`
	TotalEasy    int `json:"total_easy"`
}

// BoxCount is one bucket of a box distribution histogram.
type BoxCount struct {
	Box   int `json:"box"`
	Count int `json:"count"`
}

// DayActivity aggregates one calendar day of reviews.
type DayActivity struct {
	Date        string `json:"date"`
	ReviewCount int    `json:"review_count"`
	AgainCount  int    `json:"again_count"`
	HardCount   int    `json:"hard_count"`
	GoodCount   int    `json:"good_count"`
	EasyCount   int    `json:"easy_count"`
}

// CardStats is a per-card row in the stack statistics leaderboards.
type CardStats struct {
	ID          string `json:"id"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	Box         int    `json:"box"`
	ReviewCount int    `json:"review_count"`
	HardCount   int    `json:"hard_count"`
	EasyCount   int    `json:"easy_count"`
}

// StackStatistics is the aggregate view served for one stack.
type StackStatistics struct {
	TotalCards      int           `json:"total_cards"`
	AverageBox      float64       `json:"average_box"`
	RatingCounts    RatingCounts  `json:"rating_counts"`
	BoxDistribution []BoxCount    `json:"box_distribution"`
	MostReviewed    []CardStats   `json:"most_reviewed"`
	HardestCards    []CardStats   `json:"hardest_cards"`
	RecentActivity  []DayActivity `json:"recent_activity"`
}

// StudyStreak summarizes consecutive study days for a user.
type StudyStreak struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastStudyDate string `json:"last_study_date"`
}

// UserStatistics is the cross-stack aggregate view for one user.
type UserStatistics struct {
	TotalStacks     int           `json:"total_stacks"`
	TotalCards      int           `json:"total_cards"`
	AverageBox      float64       `json:"average_box"`
	RatingCounts    RatingCounts  `json:"rating_counts"`
	BoxDistribution []BoxCount    `json:"box_distribution"`
	StudyStreak     *StudyStreak  `json:"study_streak"`
	RecentActivity  []DayActivity `json:"recent_activity"`
}
