// Package scan is the component source of the container.
//
// Go has no class path to walk, so discovery is replaced by a catalog that
// component packages fill from their init functions. A scan root is an import
// path; every registered type whose package lives at or below that path is
// part of the scan.
//
// # Declaring a component
//
//	type UserService struct {
//	    scan.Component `component:"userService" scope:"singleton"`
//
//	    userDAO *dao.UserDAO `autowired:"true"`
//	    car     *entity.Car  `resource:"car"`
//	}
//
//	func init() { scan.Register((*UserService)(nil)) }
//
// The embedded Component marker carries two optional tags:
//   - component: the bean name, defaulting to the type name with its first
//     letter lower-cased ("UserService" → "userService")
//   - scope: "singleton" (default) or "prototype"
//
// Field tags request injection:
//   - autowired:"true" resolves the field by its declared type
//   - resource:"name" resolves the field by bean name; an empty name falls
//     back to the field name with its first letter lower-cased
//
// Types registered without the marker are enumerated but skipped by
// Components, the same way a scanner ignores classes that are not components.
package scan
