package entrypoint

// RetainAnnotations is the minimum recognized set from §6: a declaration (or
// its enclosing class) carrying any of these is seeded as reachable without
// requiring an incoming reference.
var RetainAnnotations = map[string]bool{
	// Android lifecycle
	"AndroidEntryPoint": true, "HiltAndroidApp": true, "HiltViewModel": true,
	"Composable": true, "Preview": true, "Keep": true, "JvmStatic": true,
	"JvmField": true, "JvmOverloads": true, "JvmName": true,

	// Dependency injection
	"Inject": true, "Provides": true, "Binds": true, "BindsInstance": true,
	"IntoMap": true, "IntoSet": true, "Module": true, "Component": true,
	"AssistedInject": true, "AssistedFactory": true, "Factory": true,
	"Single": true, "KoinViewModel": true,

	// Persistence
	"Entity": true, "Dao": true, "Database": true, "Query": true,
	"Insert": true, "Update": true, "Delete": true, "RawQuery": true,
	"Transaction": true, "TypeConverter": true,

	// Networking
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true,
	"HEAD": true, "OPTIONS": true, "HTTP": true, "Path": true, "Body": true,
	"Field": true, "Header": true,

	// Serialization
	"Serializable": true, "Parcelize": true, "JsonClass": true,
	"SerializedName": true, "SerialName": true,

	// Data binding
	"BindingAdapter": true, "InverseBindingAdapter": true,
	"BindingMethod": true, "BindingMethods": true, "BindingConversion": true,

	// Lifecycle
	"OnLifecycleEvent": true,

	// Testing
	"Test": true, "Before": true, "After": true, "BeforeEach": true,
	"AfterEach": true, "ParameterizedTest": true, "RunWith": true,

	// Event bus
	"Subscribe": true,
}

// frameworkClassAnnotations are annotations on a class (not a member) that,
// per §4.5, seed both the class and every member carrying a matching
// annotation — e.g. a @Module class seeds its @Provides methods.
var frameworkClassAnnotations = map[string]bool{
	"Module": true, "Dao": true, "Database": true, "HiltAndroidApp": true,
	"Component": true, "Entity": true,
}

// isRetainAnnotation reports whether name (bare or qualified) is recognized,
// comparing only the simple name since parsers record annotations as
// written (often unqualified, e.g. "@Test").
func isRetainAnnotation(name string) bool {
	return RetainAnnotations[simpleAnnotationName(name)]
}

func simpleAnnotationName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}
