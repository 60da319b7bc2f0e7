// File: pkg/analyzer/types.go
package analyzer

// FileNode represents one filesystem entry discovered during traversal.
// Nodes are created by the crawler and read-only afterwards; a directory
// node is only emitted when at least one descendant survived filtering.
type FileNode struct {
	Name        string      // Base name of the entry
	Path        string      // Absolute path, unique within a traversal
	Size        int64       // Byte size; zero for directories
	IsDirectory bool        // Immutable after creation
	Children    []*FileNode // Non-empty only for directories
}

// FileStats holds the aggregate file counters for one analysis.
type FileStats struct {
	TotalSize      int64 // Sum of byte sizes of all relevant files found
	TotalCount     int   // Number of file nodes in the final tree
	ProcessedCount int   // Number of files whose content was read and appended
}

// Warning records a soft, per-item failure that was skipped during
// traversal or assembly. The analysis still completed; callers can use
// these to distinguish a degraded result from a clean one.
type Warning struct {
	Op   string // Operation that failed: "readdir", "stat", "read", "binary"
	Path string // Path the failure applies to
	Err  error  // Underlying error; nil for binary skips
}

// Result is the immutable output of a single Analyze call.
type Result struct {
	Context    string    // Assembled, possibly truncated context text
	TokenCount int       // Exact token count of Context
	TreeView   string    // Rendered tree diagram
	Files      FileStats // Aggregate counters
	Warnings   []Warning // Soft failures encountered along the way
}
