package commands

// SupersededWheel exports supersededWheel for testing.
var SupersededWheel = supersededWheel //nolint:gochecknoglobals // test export

// FindDuplicates exports findDuplicates for testing.
var FindDuplicates = findDuplicates //nolint:gochecknoglobals // test export
