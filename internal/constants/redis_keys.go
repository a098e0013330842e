package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ProfileModulePrefix 解析结果模块
	ProfileModulePrefix = "profile"

	// EntityCache 缓存实体
	EntityCache = "cache"

	// KeyProfileCache 解析结果缓存 (STRING, JSON编码)
	// 格式: app:profile:cache:{raw_text_md5}
	KeyProfileCache = AppPrefix + ":" + ProfileModulePrefix + ":" + EntityCache + ":%s"
)
