package main

import (
	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/pkg/rabbitmq"
)

type AppConfigJson struct {
	LoggerConf   logger.LoggerConfigJson     `json:"logger"`
	RabbitmqConf rabbitmq.RabbitmqConfigJson `json:"rabbitmq"`
	RestConf     RestConfigJson              `json:"rest"`
	DatabaseConf DatabaseConfigJson          `json:"database"`
	ProverConf   ProverConfigJson            `json:"prover"`
}

func (acj AppConfigJson) ConvertToDomain() AppConfig {
	return AppConfig{
		LoggerConf:   acj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: acj.RabbitmqConf.ConvertToDomain(),
		RestConf:     acj.RestConf.ConvertToDomain(),
		DatabaseConf: acj.DatabaseConf.ConvertToDomain(),
		ProverConf:   acj.ProverConf.ConvertToDomain(),
	}
}

type AppConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	RestConf     RestConfig
	DatabaseConf DatabaseConfig
	ProverConf   ProverConfig
}

type RestConfigJson struct {
	Port uint16 `json:"port"`
}

type RestConfig struct {
	Port uint16
}

func (rcj RestConfigJson) ConvertToDomain() RestConfig {
	return RestConfig{Port: rcj.Port}
}

type DatabaseConfigJson struct {
	ConnectionString string `json:"connection_string"`
}

type DatabaseConfig struct {
	ConnectionString string
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	return DatabaseConfig{ConnectionString: dcj.ConnectionString}
}

type ProverConfigJson struct {
	VerifierKey string `json:"verifier_key"`
}

type ProverConfig struct {
	VerifierKey string
}

func (pcj ProverConfigJson) ConvertToDomain() ProverConfig {
	return ProverConfig{VerifierKey: pcj.VerifierKey}
}
