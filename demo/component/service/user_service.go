// Package service holds the service-layer sample components.
package service

import (
	"github.com/km-arc/beans/demo/component/dao"
	"github.com/km-arc/beans/framework/scan"
)

// UserService depends on a UserDAO, injected by type.
type UserService struct {
	scan.Component `component:"userService"`

	userDAO *dao.UserDAO `autowired:"true"`
}

// SayHi delegates to the injected DAO. It returns "" when nothing was
// injected.
func (s *UserService) SayHi() string {
	if s.userDAO == nil {
		return ""
	}
	return s.userDAO.SayHi()
}

// DAO returns the injected UserDAO.
func (s *UserService) DAO() *dao.UserDAO { return s.userDAO }

func init() {
	scan.Register((*UserService)(nil))
}
