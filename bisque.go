// Package bisque extracts structured, typed records from semi-structured
// markup documents (HTML/XML). Given a parsed document tree and a declarative
// record schema binding fields to CSS-style selectors, it locates nodes,
// coerces their content against field types, and produces a populated record
// or an accumulated field-level error report.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, etree/, cast/, sqlite/);
// the selector engine lives in selector/ and the binder in extract/.
package bisque
