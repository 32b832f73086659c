package static

import _ "embed"

// WorkflowMd is the task record workflow guide served at /workflow.md.
//
//go:embed workflow.md
var WorkflowMd string
