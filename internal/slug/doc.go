// Package slug normalizes arbitrary text into filesystem-safe path tokens.
//
// Session and recording names come straight out of the recording report and
// may contain anything a user can type. Make turns them into lowercase,
// dash-joined tokens that are safe to use as file and directory names on
// every platform we care about.
//
// # Usage
//
//	slug.Make("Intro Lecture")   // "intro-lecture"
//	slug.Make("  CS/101: Go! ")  // "cs101-go"
//
// Input is NFKC-normalized rather than transliterated, so non-Latin scripts
// survive intact.
package slug
