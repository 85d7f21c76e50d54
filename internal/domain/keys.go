package domain

// KeyPrefix namespaces every key this service writes to the shared
// key-value store. Assigned once at startup from config, before any
// store access.
var KeyPrefix = "pawmatch:"
