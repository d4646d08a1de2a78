package model

// Package model defines domain data structures shared by the workflow, the UI and
// the CLI: the input state snapshot, verification results, submission tasks and
// status enums. Values are plain data so they can be handed to listeners by copy.
