package record

// Deaths is one row of the deaths data set.
// Every field is optional; absent and null fields decode to nil and are written as null.
type Deaths struct {
	Region     *string    `json:"region"`
	AgeRange   *string    `json:"ageRange"`
	Sex        *string    `json:"sex"`
	DeathDate  *Timestamp `json:"deathDate"`
	ReportDate *Timestamp `json:"reportDate"`
}
