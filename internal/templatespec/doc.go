// Package templatespec parses template specifications: compact strings of
// comma-separated key=value pairs that configure a template builder.
//
//	hardwareId=cpx11,osFamily=UBUNTU,loginUser=root:secret,authenticateSudo=true
//
// Supported keys, in the order they are applied to a builder:
//
//	hardwareId=[string]            exclusive with minCores, minRam, minDisk, hypervisorMatches
//	minCores=[double]
//	minRam=[integer]               megabytes
//	minDisk=[double]               gigabytes
//	hypervisorMatches=[regex]
//	imageId=[string]               exclusive with the image keys below
//	imageNameMatches=[regex]
//	osFamily=[OsFamily name]       e.g. UBUNTU, DEBIAN, CENTOS
//	osVersionMatches=[regex]
//	os64Bit=[boolean]
//	osArchMatches=[regex]
//	osDescriptionMatches=[regex]
//	loginUser=[user[:password]]
//	authenticateSudo=[boolean]     requires an earlier loginUser
//	locationId=[string]
//
// Whitespace around commas and equals signs is ignored. Keys may not repeat.
// Parsing is all-or-nothing: the first problem found is returned as a
// *ParseError and no Spec is produced.
package templatespec
