package autovalue

import (
	"os"
	"strings"

	"github.com/huandu/go-clone"
)

// Config names the annotations the generators read and write, and the shape
// of the generated builder.
type Config struct {
	// AutoValue marks value classes.
	AutoValue string `json:"autoValue"`
	// BuilderAnnotation is put on a created builder class.
	BuilderAnnotation string `json:"builderAnnotation"`
	BuilderName       string `json:"builderName"`
	// NonNull is put on generated methods.
	NonNull string `json:"nonNull"`
	// NullableAnnotations and NonNullAnnotations are recognised on
	// accessors. Besides exact matches the simple names in simpleNullable
	// and simpleNonNull are accepted.
	NullableAnnotations []string `json:"nullableAnnotations"`
	NonNullAnnotations  []string `json:"nonNullAnnotations"`
	// SetterPrefix names builder setters setName instead of name.
	SetterPrefix bool `json:"setterPrefix"`
	// StripAccessorPrefixes derives property names from getName() and
	// isName() accessors when every accessor uses such a prefix.
	StripAccessorPrefixes bool `json:"stripAccessorPrefixes"`
}

func DefaultConfig() *Config {
	return &Config{
		AutoValue:         "com.google.auto.value.AutoValue",
		BuilderAnnotation: "com.google.auto.value.AutoValue.Builder",
		BuilderName:       "Builder",
		NonNull:           "androidx.annotation.NonNull",
		NullableAnnotations: []string{
			"androidx.annotation.Nullable",
			"android.support.annotation.Nullable",
			"javax.annotation.Nullable",
			"javax.annotation.CheckForNull",
			"org.jetbrains.annotations.Nullable",
			"org.checkerframework.checker.nullness.qual.Nullable",
		},
		NonNullAnnotations: []string{
			"androidx.annotation.NonNull",
			"android.support.annotation.NonNull",
			"javax.annotation.Nonnull",
			"org.jetbrains.annotations.NotNull",
			"org.checkerframework.checker.nullness.qual.NonNull",
			"lombok.NonNull",
		},
	}
}

// Clone returns a deep copy that can be changed without affecting c.
func (c *Config) Clone() *Config {
	return clone.Clone(c).(*Config)
}

// ApplyEnv overrides c from AVHELPER_NONNULL, the annotation to emit, and
// AVHELPER_NULLABLE, a comma separated list of additional nullable
// annotations.
func (c *Config) ApplyEnv() {
	if nonNull := strings.TrimSpace(os.Getenv("AVHELPER_NONNULL")); nonNull != "" {
		c.NonNull = nonNull
		if !contains(c.NonNullAnnotations, nonNull) {
			c.NonNullAnnotations = append(c.NonNullAnnotations, nonNull)
		}
	}
	for _, name := range strings.Split(os.Getenv("AVHELPER_NULLABLE"), ",") {
		if name = strings.TrimSpace(name); name != "" && !contains(c.NullableAnnotations, name) {
			c.NullableAnnotations = append(c.NullableAnnotations, name)
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
