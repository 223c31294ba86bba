package record

// MinimalInfoUniqueTests is one row of the unique tests data set.
//
// The source publishes collection, creation and report times twice: once as a local
// MM/DD/YYYY[ HH:MM] string and once as a UTC timestamp. Both forms are kept.
// Result and TestType are free text.
type MinimalInfoUniqueTests struct {
	AgeRange         *string        `json:"ageRange"`
	City             *string        `json:"city"`
	CollectedDate    *LocalDate     `json:"collectedDate"`
	CollectedDateUTC *Timestamp     `json:"collectedDateUtc"`
	CreatedAt        *LocalDateTime `json:"createdAt"`
	CreatedAtUTC     *Timestamp     `json:"createdAtUtc"`
	ReportedDate     *LocalDate     `json:"reportedDate"`
	ReportedDateUTC  *Timestamp     `json:"reportedDateUtc"`
	Result           *string        `json:"result"`
	TestType         *string        `json:"testType"`
}
