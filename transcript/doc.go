// Package transcript renders mesh messages into a human readable
// conversation log and converts it into a history record so content
// actions can persist what was discussed.
package transcript
