package tca8418

// AddressDefault is the fixed 7-bit I2C address of the TCA8418.
const AddressDefault uint16 = 0x34

// Register map.
const (
	RegCfg          = 0x01
	RegIntStat      = 0x02
	RegKeyLckEC     = 0x03
	RegKeyEventA    = 0x04
	RegKeyEventB    = 0x05
	RegKeyEventC    = 0x06
	RegKeyEventD    = 0x07
	RegKeyEventE    = 0x08
	RegKeyEventF    = 0x09
	RegKeyEventG    = 0x0A
	RegKeyEventH    = 0x0B
	RegKeyEventI    = 0x0C
	RegKeyEventJ    = 0x0D
	RegKPLckTimer   = 0x0E
	RegUnlock1      = 0x0F
	RegUnlock2      = 0x10
	RegGPIOIntStat1 = 0x11
	RegGPIOIntStat2 = 0x12
	RegGPIOIntStat3 = 0x13
	RegGPIODatStat1 = 0x14
	RegGPIODatStat2 = 0x15
	RegGPIODatStat3 = 0x16
	RegGPIODatOut1  = 0x17
	RegGPIODatOut2  = 0x18
	RegGPIODatOut3  = 0x19
	RegGPIOIntEn1   = 0x1A
	RegGPIOIntEn2   = 0x1B
	RegGPIOIntEn3   = 0x1C
	RegKPGPIO1      = 0x1D
	RegKPGPIO2      = 0x1E
	RegKPGPIO3      = 0x1F
	RegGPIEM1       = 0x20
	RegGPIEM2       = 0x21
	RegGPIEM3       = 0x22
	RegGPIODir1     = 0x23
	RegGPIODir2     = 0x24
	RegGPIODir3     = 0x25
	RegGPIOIntLvl1  = 0x26
	RegGPIOIntLvl2  = 0x27
	RegGPIOIntLvl3  = 0x28
	RegDebounceDis1 = 0x29
	RegDebounceDis2 = 0x2A
	RegDebounceDis3 = 0x2B
	RegGPIOPull1    = 0x2C
	RegGPIOPull2    = 0x2D
	RegGPIOPull3    = 0x2E
)

// CFG register bits.
const (
	CfgAI        = 0x80 // auto-increment
	CfgGPIECfg   = 0x40 // GPI events tracked when keypad locked
	CfgOvrFlowM  = 0x20 // overflow mode: FIFO wraps instead of dropping
	CfgIntCfg    = 0x10 // INT de-asserts for 50us when events remain
	CfgOvrFlowIE = 0x08
	CfgKLckIE    = 0x04
	CfgGPIIE     = 0x02
	CfgKEIE      = 0x01
)

// INT_STAT register bits. Each bit is cleared by writing 1.
const (
	IntStatCAD     = 0x10
	IntStatOvrFlow = 0x08
	IntStatKLck    = 0x04
	IntStatGPI     = 0x02
	IntStatK       = 0x01
)

// Matrix and GPIO limits.
const (
	MaxRows = 8
	MaxCols = 10
	MaxPin  = 17 // ROW0..ROW7 are pins 0..7, COL0..COL9 are pins 8..17

	eventCountMask = 0x0F
	eventPressBit  = 0x80
	eventCodeMask  = 0x7F
)
