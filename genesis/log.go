package genesis

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "genesis")
