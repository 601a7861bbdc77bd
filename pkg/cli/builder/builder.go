package builder

import (
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unsafe"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var caseRegexp = regexp.MustCompile("([a-z])([A-Z])")

type PersistentPreRunnable interface {
	PersistentPre(cmd *cobra.Command, args []string) error
}

type PreRunnable interface {
	Pre(cmd *cobra.Command, args []string) error
}

type Runnable interface {
	Run(cmd *cobra.Command, args []string) error
}

type customizer interface {
	Customize(cmd *cobra.Command)
}

type fieldInfo struct {
	FieldType  reflect.StructField
	FieldValue reflect.Value
}

func fields(obj any) []fieldInfo {
	ptrValue := reflect.ValueOf(obj)
	objValue := ptrValue.Elem()

	var result []fieldInfo

	for i := 0; i < objValue.NumField(); i++ {
		fieldType := objValue.Type().Field(i)
		if fieldType.Anonymous && fieldType.Type.Kind() == reflect.Struct {
			result = append(result, fields(objValue.Field(i).Addr().Interface())...)
		} else if !fieldType.Anonymous {
			result = append(result, fieldInfo{
				FieldValue: objValue.Field(i),
				FieldType:  fieldType,
			})
		}
	}

	return result
}

func Name(obj any) string {
	ptrValue := reflect.ValueOf(obj)
	objValue := ptrValue.Elem()
	commandName := strings.Replace(objValue.Type().Name(), "Command", "", 1)
	commandName, _ = name(commandName, "", "")
	return commandName
}

func name(fieldName, setName, short string) (string, string) {
	if setName != "" {
		return setName, short
	}
	return strings.ToLower(caseRegexp.ReplaceAllString(fieldName, "$1-$2")), short
}

// Command populates a cobra.Command from the tagged fields of obj.
// Field names become kebab-case flag names, honoring the name, short,
// usage, default, env, local and hidden tags. Lowercase fields are left
// alone so commands can carry their client factory around.
func Command(obj Runnable, cmd cobra.Command) *cobra.Command {
	var (
		envs     []func(flags *pflag.FlagSet)
		slices   = map[string]reflect.Value{}
		maps     = map[string]reflect.Value{}
		objValue = reflect.ValueOf(obj).Elem()
	)

	c := cmd
	if c.Use == "" {
		c.Use = Name(obj)
	}

	for _, info := range fields(obj) {
		fieldType := info.FieldType
		v := info.FieldValue

		if strings.ToUpper(fieldType.Name[0:1]) != fieldType.Name[0:1] {
			continue
		}

		name, alias := name(fieldType.Name, fieldType.Tag.Get("name"), fieldType.Tag.Get("short"))
		usage := fieldType.Tag.Get("usage")
		env := strings.Split(fieldType.Tag.Get("env"), ",")
		defValue := fieldType.Tag.Get("default")
		if len(env) == 1 && env[0] == "" {
			env = nil
		}
		defInt, err := strconv.Atoi(defValue)
		if err != nil {
			defInt = 0
		}

		flags := c.PersistentFlags()
		if fieldType.Tag.Get("local") == "true" {
			flags = c.Flags()
		}

		switch fieldType.Type.Kind() {
		case reflect.Int:
			flags.IntVarP((*int)(unsafe.Pointer(v.Addr().Pointer())), name, alias, defInt, usage)
		case reflect.Int64:
			flags.Int64VarP((*int64)(unsafe.Pointer(v.Addr().Pointer())), name, alias, int64(defInt), usage)
		case reflect.String:
			flags.StringVarP((*string)(unsafe.Pointer(v.Addr().Pointer())), name, alias, defValue, usage)
		case reflect.Slice:
			slices[name] = v
			flags.StringSliceP(name, alias, nil, usage)
		case reflect.Map:
			maps[name] = v
			flags.StringSliceP(name, alias, nil, usage)
		case reflect.Bool:
			flags.BoolVarP((*bool)(unsafe.Pointer(v.Addr().Pointer())), name, alias, defValue == "true", usage)
		default:
			panic("Unknown kind on field " + fieldType.Name + " on " + objValue.Type().Name())
		}

		if fieldType.Tag.Get("hidden") == "true" {
			if err := flags.MarkHidden(name); err != nil {
				panic(err)
			}
		}

		for _, envName := range env {
			envName := envName
			flagName := name
			envs = append(envs, func(flags *pflag.FlagSet) {
				v := os.Getenv(envName)
				if v == "" {
					return
				}
				if f := flags.Lookup(flagName); f != nil && !f.Changed {
					_ = flags.Set(flagName, v)
				}
			})
		}
	}

	if p, ok := obj.(PersistentPreRunnable); ok {
		c.PersistentPreRunE = p.PersistentPre
	}

	if p, ok := obj.(PreRunnable); ok {
		c.PreRunE = p.Pre
	}

	c.RunE = obj.Run
	c.PersistentPreRunE = bind(c.PersistentPreRunE, slices, maps, envs)
	c.PreRunE = bind(c.PreRunE, slices, maps, envs)
	c.RunE = bind(c.RunE, slices, maps, envs)

	if cust, ok := obj.(customizer); ok {
		cust.Customize(&c)
	}

	return &c
}

func bind(next func(*cobra.Command, []string) error,
	slices map[string]reflect.Value,
	maps map[string]reflect.Value,
	envs []func(flags *pflag.FlagSet)) func(*cobra.Command, []string) error {
	if next == nil {
		return nil
	}
	return func(cmd *cobra.Command, args []string) error {
		for _, envCallback := range envs {
			envCallback(cmd.Flags())
		}
		for name, item := range slices {
			fv, err := cmd.Flags().GetStringSlice(name)
			if err != nil {
				return err
			}
			item.Set(reflect.ValueOf(fv))
		}
		for name, item := range maps {
			fv, err := cmd.Flags().GetStringSlice(name)
			if err != nil {
				return err
			}
			item.Set(reflect.ValueOf(toMap(fv)))
		}

		return next(cmd, args)
	}
}

func toMap(values []string) map[string]string {
	result := map[string]string{}
	for _, value := range values {
		k, v, _ := strings.Cut(value, "=")
		result[k] = v
	}
	return result
}
