package i18n

// Message codes used by the converter and coercer. Catalogs key their
// translations by these codes; parameters named in the comments are passed
// with every lookup.
const (
	// CodePropertyEmpty has no parameters.
	CodePropertyEmpty = "json_schema.errors.property_empty"
	// CodePropertySpecialChars takes "name" (the offending title).
	CodePropertySpecialChars = "json_schema.errors.property_special_chars"
	// CodePropertyDuplicateKey takes "key" and "name" (the titles sharing it).
	CodePropertyDuplicateKey = "json_schema.errors.property_duplicate_key"
	// CodePropertyNotAllowed takes "property".
	CodePropertyNotAllowed = "json_schema.errors.property_not_allowed"
	// CodeEmptyStringNonString takes "property".
	CodeEmptyStringNonString = "json_schema.errors.empty_string_non_string"
	// CodeNumberInvalid takes "property" and "value".
	CodeNumberInvalid = "json_schema.errors.number_invalid"
	// CodeBooleanInvalid takes "property".
	CodeBooleanInvalid = "json_schema.errors.boolean_invalid"
	// CodeIntegerInvalid takes "property" and "value".
	CodeIntegerInvalid = "json_schema.errors.integer_invalid"
	// CodeArrayInvalid takes "property" and "value".
	CodeArrayInvalid = "json_schema.errors.array_invalid"
	// CodeArrayJSONInvalid takes "property" and "value".
	CodeArrayJSONInvalid = "json_schema.errors.array_json_invalid"
	// CodeObjectInvalid takes "property" and "value".
	CodeObjectInvalid = "json_schema.errors.object_invalid"
	// CodeObjectJSONInvalid takes "property" and "value".
	CodeObjectJSONInvalid = "json_schema.errors.object_json_invalid"
	// CodeUnsupportedType takes "type" and "property".
	CodeUnsupportedType = "json_schema.errors.unsupported_type"
	// CodeRequiredPropertyMissing takes "property".
	CodeRequiredPropertyMissing = "json_schema.errors.required_property_missing"
	// CodeSchemaValidationFailed has no parameters.
	CodeSchemaValidationFailed = "json_schema.errors.schema_validation_failed"
	// CodeSchemaParseFailed takes "error".
	CodeSchemaParseFailed = "json_schema.errors.schema_parse_failed"

	CodeExamplePropertyTitle       = "json_schema.errors.example_property_title"
	CodeExamplePropertyDescription = "json_schema.errors.example_property_description"

	// Subset conformance of stored schemas. CodeSubsetParseFailed takes
	// "error"; CodeSubsetKeywordUnsupported and CodeSubsetKeywordNotString take
	// "keyword"; CodeSubsetRootType and CodeSubsetTypeUnsupported take "type";
	// CodeSubsetRequiredUndeclared takes "property".
	CodeSubsetParseFailed         = "json_schema.subset.parse_failed"
	CodeSubsetNullSchema          = "json_schema.subset.null_schema"
	CodeSubsetKeywordUnsupported  = "json_schema.subset.keyword_unsupported"
	CodeSubsetRootType            = "json_schema.subset.root_type"
	CodeSubsetPropertiesNotObject = "json_schema.subset.properties_not_object"
	CodeSubsetRequiredNotArray    = "json_schema.subset.required_not_array"
	CodeSubsetRequiredNotString   = "json_schema.subset.required_not_string"
	CodeSubsetRequiredUndeclared  = "json_schema.subset.required_undeclared"
	CodeSubsetPropertyNotObject   = "json_schema.subset.property_not_object"
	CodeSubsetTypeUnsupported     = "json_schema.subset.type_unsupported"
	CodeSubsetKeywordNotString    = "json_schema.subset.keyword_not_string"
	CodeSubsetNestedItems         = "json_schema.subset.nested_items"
	CodeSubsetItemsNotArray       = "json_schema.subset.items_not_array"

	// Typed documents checked against a schema. CodeDocumentInvalidType takes
	// "field", "expected" and "given"; CodeDocumentRequired and
	// CodeDocumentNotAllowed take "property"; CodeDocumentInvalid takes "field"
	// and "detail".
	CodeDocumentInvalidType = "json_schema.document.invalid_type"
	CodeDocumentRequired    = "json_schema.document.required"
	CodeDocumentNotAllowed  = "json_schema.document.not_allowed"
	CodeDocumentInvalid     = "json_schema.document.invalid"

	CodeUnknownError = "errors.unknown_error"
	// CodeUnexpectedError takes "error".
	CodeUnexpectedError = "errors.unexpected_error"

	// Prompt labels for the terminal editor. CodePromptFixErrors takes "count";
	// CodePromptPosition takes "title".
	CodePromptAction      = "prompts.action"
	CodePromptAdd         = "prompts.add"
	CodePromptRemove      = "prompts.remove"
	CodePromptMove        = "prompts.move"
	CodePromptEdit        = "prompts.edit"
	CodePromptDone        = "prompts.done"
	CodePromptTitle       = "prompts.title"
	CodePromptDescription = "prompts.description"
	CodePromptType        = "prompts.type"
	CodePromptRequired    = "prompts.required"
	CodePromptProperty    = "prompts.property"
	CodePromptPosition    = "prompts.position"
	CodePromptSkip        = "prompts.skip"
	CodePromptFixErrors   = "prompts.fix_errors"
)
