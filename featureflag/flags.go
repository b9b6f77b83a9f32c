package featureflag

type Flag string

const (
	// FlagClassifyAudit compares, after inner-box classification, the
	// point-inner flag of every cell with the reference predicate passed
	// by the caller and logs the number of cells that disagree.
	FlagClassifyAudit Flag = "CLASSIFY_AUDIT"
)
