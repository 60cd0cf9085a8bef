package java

// LookupType finds the class a type reference written in c refers to. find
// maps qualified names to classes known to the caller. References that
// Resolve could not decide are tried against the wildcard imports of c's
// file and then c's package.
func (c *Class) LookupType(ref Type, find func(qualified string) *Class) *Class {
	if ref.Qualified != "" {
		return find(ref.Qualified)
	}
	if !ref.IsClass() || c.File == nil {
		return nil
	}
	for _, pkg := range c.File.WildcardPackages() {
		if found := find(pkg + "." + ref.Name); found != nil {
			return found
		}
	}
	return find(qualify(c.Package, ref.Name))
}
