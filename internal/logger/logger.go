package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

func InitLogger(production bool) {
	var err error
	if production {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to init logger: " + err.Error())
	}
}

func SyncLogger() {
	_ = Log.Sync()
}
