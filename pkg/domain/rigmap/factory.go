// 指示: miu200521358
package rigmap

import "github.com/miu200521358/mu_mocap2rig/pkg/domain/model"

// Create は指定規約のマッピングを生成する。未対応の種別はConfigurationErrorを返す。
func Create(rigType RigType) (Mapping, error) {
	switch rigType {
	case RigTypeMixamo:
		return &mixamoMapping{}, nil
	case RigTypeRigify:
		return &rigifyMapping{}, nil
	case RigTypeMaya:
		return &mayaMapping{}, nil
	default:
		return nil, &model.ConfigurationError{RigType: string(rigType)}
	}
}

// SupportedRigTypes は対応済みリグ規約の一覧を返す。
func SupportedRigTypes() []RigType {
	return []RigType{RigTypeMixamo, RigTypeRigify, RigTypeMaya}
}
