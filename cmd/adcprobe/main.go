package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/modbusclient"
	"github.com/nergy-se/fancontroller/pkg/thermistor"
)

func main() {
	address := flag.String("addr", "", "tcp modbus address")
	device := flag.String("device", "", "serial device for modbus rtu, used instead of -addr")
	baud := flag.Int("baud", 9600, "rtu baud rate")
	slaveID := flag.Int("slave", 1, "modbus slave id")
	inputreg := flag.Int("inputreg", 0, "input register holding the raw adc sample")
	holdingreg := flag.Int("holdingreg", -1, "holding register to read back, e.g. the pwm level")
	coil := flag.Int("coil", -1, "coil to write when -value is given")
	value := flag.Int("value", 0, "0 or 1 written to -coil")
	flag.Parse()

	var client modbusclient.Client
	if *device != "" {
		client = modbusclient.NewRTU(*device, *baud, byte(*slaveID), time.Second)
	} else {
		client = modbusclient.NewTCP(*address, byte(*slaveID), time.Second)
	}
	defer client.Close()

	raw, err := client.ReadInputRegister(uint16(*inputreg))
	if err != nil {
		log.Fatalln("error was: ", err)
	}
	fmt.Printf("raw sample: %d (0x%04x)\n", raw, raw)

	temp, err := thermistor.ReadTemperature(raw)
	if err != nil {
		fmt.Println("no temperature:", err)
	} else {
		duty, alarm := controller.Evaluate(temp)
		fmt.Printf("temperature: %.2f °C duty: %.1f%% level: %d alarm: %t\n", temp, duty, controller.PWMLevel(duty, controller.DefaultPWMWrap), alarm)
	}

	if isFlagPassed("holdingreg") {
		v, err := client.ReadHoldingRegister16(uint16(*holdingreg))
		if err != nil {
			log.Println("error was: ", err)
		}
		fmt.Printf("holding register %d: %d\n", *holdingreg, v)
	}

	if isFlagPassed("coil") && isFlagPassed("value") {
		_, err := client.WriteSingleCoil(uint16(*coil), modbusclient.CoilValue(*value != 0))
		if err != nil {
			log.Println("error was: ", err)
		}
	}
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
