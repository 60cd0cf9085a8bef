package autovalue

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("avhelper.autovalue")
