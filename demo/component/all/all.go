// Package all registers every demo component. Import it for side effects.
package all

import (
	_ "github.com/km-arc/beans/demo/component/aspect"
	_ "github.com/km-arc/beans/demo/component/dao"
	_ "github.com/km-arc/beans/demo/component/entity"
	_ "github.com/km-arc/beans/demo/component/processor"
	_ "github.com/km-arc/beans/demo/component/service"
)
