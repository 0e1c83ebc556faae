package diagnostic

// Diagnostic codes.
const (
	// CodeUnrecognizedMethod: a method is neither a getter nor a putter,
	// or an embedded element is not a named interface.
	CodeUnrecognizedMethod = "E001"
	// CodeUnresolvedAncestor: an embedded interface could not be loaded.
	CodeUnresolvedAncestor = "E002"
	// CodeCacheOnDefaultStore: caching was requested on the default store.
	CodeCacheOnDefaultStore = "E003"
	// CodeTypeMismatch: a getter and its putter disagree on the value type.
	CodeTypeMismatch = "E004"
	// CodeInvalidDefault: a default literal does not fit the value type.
	CodeInvalidDefault = "E005"
	// CodeInvalidDirective: a //prefs: directive or override is malformed.
	CodeInvalidDirective = "E006"
	// CodeReservedName: an accessor collides with a generated lifecycle method.
	CodeReservedName = "E007"

	// CodeGetterWithoutPutter: a getter key has no putter.
	CodeGetterWithoutPutter = "W001"
	// CodePutterWithoutGetter: a putter key has no getter.
	CodePutterWithoutGetter = "W002"
	// CodeCarrierRenamed: a carrier type name was disambiguated.
	CodeCarrierRenamed = "W003"
	// CodeDuplicateAccessor: the same key and role is declared twice.
	CodeDuplicateAccessor = "W004"
)
