package savesync

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("scssgen.sync")
