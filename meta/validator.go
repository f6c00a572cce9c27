package meta

// ValidateSingleReferenceKind fails with *DuplicateDecoratorError when name is
// already registered on entity with a kind other than kind.
func ValidateSingleReferenceKind(entity *EntityMetadata, name string, kind ReferenceKind) error {
	entity.mu.RLock()
	defer entity.mu.RUnlock()

	return validateSingleReferenceKind(entity, name, kind)
}

// validateSingleReferenceKind expects the caller to hold entity.mu.
func validateSingleReferenceKind(entity *EntityMetadata, name string, kind ReferenceKind) error {
	existing, ok := entity.properties[name]
	if !ok || existing.Kind == kind {
		return nil
	}
	return &DuplicateDecoratorError{
		Entity:   entity.id.String(),
		Property: name,
		Existing: existing.Kind,
		Incoming: kind,
	}
}
