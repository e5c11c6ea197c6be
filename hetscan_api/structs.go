package hetscan_api

// A struct representing one data line of a gVCF file for one genomic position
type VariantRecord struct {
	// The chromosome of the variant
	Chromosome string

	// The 1-based position of the variant
	Pos int64

	// The ID of the variant
	Id string

	// The reference allele of the variant
	Ref string

	// The alternate allele(s) of the variant
	Alt string

	// The Phred-scaled quality score of the variant
	Qual string

	// The filter status of the variant
	Filter string

	// The ordered FORMAT keys of the record (e.g. GT, AD, DP, GQ)
	FormatKeys []string

	// The colon-delimited sample value string, aligned positionally to FormatKeys
	SampleValue string
}

// The three quality-relevant subfields extracted from one record for one sample.
// A subfield absent from the FORMAT keys is the empty string, never a default.
type GenotypeFields struct {
	// The genotype call, e.g. "0/1", "1|0", "0/0"
	GT string

	// The read depth, kept as text since it can be absent or non-numeric (".")
	DP string

	// The genotype quality, kept as text for the same reason
	GQ string
}

// The outcome of filtering one input file, with the progressive counts of
// records surviving each criterion in order
type FilterResult struct {
	// The sample the input file belongs to
	SampleID string

	// The cohort the sample belongs to
	Cohort string

	// The name of the input file
	GZFile string

	// The name of the filtered output file
	FilteredFile string

	// Number of non-header lines parsed
	NRecords int

	// Number of records with a missing GT call
	GTMissing int

	// Number of records left after the heterozygous GT check
	AfterGTHet int

	// Number of records left after the read depth check
	AfterDP int

	// Number of records left after the genotype quality check
	AfterGQ int

	// Final count of passing records, always equal to AfterGQ
	HetCount int

	// Number of lines skipped because they could not be parsed
	MalformedCount int
}

// One individual's metadata attributes as read from a cohort metadata table
type MetadataRow struct {
	SampleID string
	Age      string
	Ancestry string
	IQ       string
}

// One individual's metadata attributes merged with the filter outcome of
// their file. Immutable once produced.
type MergedRow struct {
	MetadataRow
	Cohort string
	Result FilterResult
}

// A cohort directory with its metadata table
type Cohort struct {
	// The name of the cohort, taken from the directory name
	Name string

	// The path of the cohort directory
	Dir string

	// The metadata rows of the cohort, one per individual
	Rows []MetadataRow
}

// The outcome of matching one metadata SampleID against the cohort directory
type SampleFile struct {
	SampleID string
	Cohort   string

	// Absolute path of the matched .gz file, empty when not matched
	Path string

	// Number of lines in the matched file
	LineCount int

	// One of NORMAL, MISSING or MULTIPLE_MATCH
	Note string
}

const (
	NoteNormal        = "NORMAL"
	NoteMissing       = "MISSING"
	NoteMultipleMatch = "MULTIPLE_MATCH"
)
